// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, unit-of-work helper
//	├── books/           # Books and their category memberships
//	├── categories/      # Categories and the delete guard count
//	├── carts/           # Carts and the cart_books join table
//	├── sales/           # Sales and the sale_books join table
//	└── users/           # Registered users
//
// # Units of Work
//
// A single Database is opened at process start and shared. Each service call
// runs inside Database.Transaction and builds the repositories it needs over
// the transaction handle, so every read and write of a request commits once:
//
//	err := db.Transaction(ctx, func(tx *gorm.DB) error {
//		cartsRepo := carts.NewRepository(tx)
//		booksRepo := books.NewRepository(tx)
//		...
//	})
//
// # Join Tables
//
// Many-to-many associations are explicit entities (entities.CartBook,
// entities.SaleBook, entities.BookCategory). Repositories expose them as id
// sets (BookIDs, ReplaceBooks, CountBooks) instead of lazy object graphs.
// Foreign keys are enforced by SQLite; the ON DELETE rules are declared on
// the join entities.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Models so it is migrated
package database
