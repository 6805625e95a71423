// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model carries ToDomain/FromDomain mappers.
//
// Tables:
//   - invoice_counters: one row per issue date, last issued sequence
//   - ledger_entries: every dated monetary row of every venture
//   - wage_lines: per-employee wage rows
//   - bookings: catering bookings, versioned
//   - projects: construction contracts
//   - project_activities: non-monetary site log of a project
package models
