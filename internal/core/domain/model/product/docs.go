// Package product provides the Product aggregate for the fulfillment system.
//
// A Product is a sellable item with a tracked inventory count. The shipping
// workflow treats products as consumable: it checks availability
// (inventory > 0) and decrements one unit per order line. Inventory carries
// no floor below zero after the availability check; negative counts can only
// arise from racing shipments and are tolerated on restoration.
package product
