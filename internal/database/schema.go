package database

import (
	"database/sql"
	"fmt"
)

// schema holds the full database schema, one statement per entry (the
// driver does not allow multiple statements per Exec by default).
//
// The UNIQUE keys on containers.qr_code and (color, number) are the
// authoritative guard for code uniqueness: the in-process allocator and
// pre-insert check only produce candidates, and concurrent creations
// are arbitrated here. Items cascade with their container; a deleted
// location detaches its containers instead of removing them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id          CHAR(36) PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_locations_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS containers (
		id            CHAR(36) PRIMARY KEY,
		qr_code       VARCHAR(16) NOT NULL,
		color         VARCHAR(16) NOT NULL,
		number        INT NOT NULL,
		location_id   CHAR(36) NULL,
		location_text VARCHAR(255) NULL,
		description   TEXT NULL,
		photo_url     VARCHAR(512) NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_containers_qr_code (qr_code),
		UNIQUE KEY uq_containers_color_number (color, number),
		CONSTRAINT fk_containers_location FOREIGN KEY (location_id)
			REFERENCES locations(id) ON DELETE SET NULL,
		FULLTEXT KEY ft_containers_description (description)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS items (
		id           CHAR(36) PRIMARY KEY,
		container_id CHAR(36) NOT NULL,
		name         VARCHAR(255) NOT NULL,
		description  TEXT NULL,
		quantity     INT NOT NULL DEFAULT 1,
		photo_url    VARCHAR(512) NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_items_container (container_id),
		CONSTRAINT fk_items_container FOREIGN KEY (container_id)
			REFERENCES containers(id) ON DELETE CASCADE,
		FULLTEXT KEY ft_items_name_description (name, description)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
