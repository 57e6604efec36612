package provider

import "content-provider/models"

// CheeseStore is the row-level CRUD surface of the table store
type CheeseStore interface {
	SelectAll() ([]models.Cheese, error)
	SelectByID(id int64) ([]models.Cheese, error)
	Insert(cheese *models.Cheese) (int64, error)
	InsertAll(cheeses []models.Cheese) ([]int64, error)
	Update(cheese models.Cheese) (int64, error)
	DeleteByID(id int64) (int64, error)
}

// Transaction is a CheeseStore scoped to one write transaction
type Transaction interface {
	CheeseStore
	Commit() error
	Rollback() error
}

// TableStore is the store handle injected into the provider.
// Its lifecycle belongs to the caller.
type TableStore interface {
	CheeseStore
	Begin() (Transaction, error)
}
