// Package models defines the business entities the JobKeeper client stores
// remotely and, when the backend is unreachable, in local key-value storage.
//
// Every entity carries a client-generated UUID, so rows created offline have
// the same id shape as rows created online. Child entities (tasks, reminders,
// jobs, invoices) reference their client through ClientID.
package models
