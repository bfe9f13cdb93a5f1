package database

import (
	"github.com/jmoiron/sqlx"
)

func OpenDB(uri string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", uri)
	if err != nil {
		return nil, err
	}

	return db, nil
}
