// Package models contains GORM persistence models for the ledgers the
// balance sheet reads from. They are kept apart from the domain types so the
// domain layer stays free of ORM tags.
//
// The tables are owned by the operational modules of the ERP; this service
// only reads them:
// - stock_records: quantity and unit cost per inventory item
// - treasury_accounts: cash and bank balances
// - parties: customer and supplier running balances
package models
