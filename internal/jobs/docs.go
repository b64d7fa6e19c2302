// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. StockReportJob - Runs every minute to log products whose inventory has
// been exhausted, so operators can restock before shipping starts failing.
//
// All jobs are coordinated through the JobManager, which wires handlers into
// their jobs and starts and stops them together.
package jobs
