package tourquery

import (
	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Order clauses
)

// sortable maps accepted sortBy values to columns
var sortable = map[string]string{
	"price": "price",
}

// Order applies the requested sort, then start_date and id ascending so that
// ties always come back in the same order
func Order(s *Sort) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if s != nil {
			if col, ok := sortable[s.Column]; ok {
				db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Desc})
			}
		}
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "start_date"}}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
}
