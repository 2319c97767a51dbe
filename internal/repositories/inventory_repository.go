package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

type InventoryRepository struct {
	DB *sql.DB
}

const errTableMissing = 1146

// Availability probes the seller's on-hand quantity per tender item. The
// check is advisory: a deployment without the inventory table reports
// supported=false and the caller proceeds.
func (r *InventoryRepository) Availability(ctx context.Context, sellerAccountID int, itemNames []string) (map[string]float64, bool, error) {
	if len(itemNames) == 0 {
		return nil, true, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT item_name, quantity FROM seller_inventory WHERE seller_account_id = ?`, sellerAccountID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errTableMissing {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer rows.Close()

	stock := make(map[string]float64)
	for rows.Next() {
		var name string
		var qty float64
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, false, err
		}
		stock[name] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	available := make(map[string]float64, len(itemNames))
	for _, name := range itemNames {
		available[name] = stock[name]
	}
	return available, true, nil
}
