package sqlite

import (
	"github.com/example/pousada-manager/internal/persistence/sqlite/migration"
)

// Migrations returns the ordered list of schema migrations. New migrations
// are appended here with a strictly increasing version.
func Migrations() []migration.Migration {
	return []migration.Migration{
		{
			Version:     "001",
			Description: "initial schema",
			SQL: `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	address TEXT,
	birth_date TEXT,
	password_hash TEXT NOT NULL,
	is_admin INTEGER NOT NULL DEFAULT 0,
	disabled INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rooms (
	id TEXT PRIMARY KEY,
	number TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	daily_rate REAL NOT NULL,
	features TEXT NOT NULL DEFAULT '[]',
	notes TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_requests (
	id TEXT PRIMARY KEY,
	room_id TEXT NOT NULL,
	guest_name TEXT NOT NULL,
	guest_email TEXT NOT NULL,
	guest_phone TEXT NOT NULL DEFAULT '',
	check_in TEXT NOT NULL,
	check_out TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected', 'completed')),
	notes TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (room_id) REFERENCES rooms(id)
);

CREATE INDEX IF NOT EXISTS idx_booking_requests_status ON booking_requests(status);
CREATE INDEX IF NOT EXISTS idx_booking_requests_room ON booking_requests(room_id);

CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	room_id TEXT NOT NULL,
	request_id TEXT,
	guest_name TEXT NOT NULL,
	guest_email TEXT NOT NULL,
	guest_phone TEXT NOT NULL DEFAULT '',
	check_in TEXT NOT NULL,
	check_out TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'scheduled'
		CHECK (status IN ('confirmed', 'scheduled', 'cancelled')),
	total_amount REAL NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (room_id) REFERENCES rooms(id),
	FOREIGN KEY (request_id) REFERENCES booking_requests(id)
);

CREATE INDEX IF NOT EXISTS idx_bookings_room ON bookings(room_id);
CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
CREATE INDEX IF NOT EXISTS idx_bookings_guest_email ON bookings(guest_email);

CREATE TABLE IF NOT EXISTS menu_items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL
		CHECK (category IN ('porcoes', 'caldos', 'bebidas', 'vinhos')),
	price REAL NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	items TEXT NOT NULL,
	total REAL NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'preparing', 'delivered', 'cancelled')),
	room_number TEXT NOT NULL,
	guest_name TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_room_number ON orders(room_number);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	fingerprint TEXT NOT NULL DEFAULT '',
	expires_at TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	revoked_at TEXT,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)
`,
		},
		{
			Version:     "002",
			Description: "seed menu items",
			SQL: `
INSERT INTO menu_items (id, name, category, price, active, created_at, updated_at) VALUES
	('menu-porcoes-01', 'Batata Frita 500gr', 'porcoes', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-porcoes-02', 'Bolinho de Bacalhau (12 unid)', 'porcoes', 55.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-porcoes-03', 'Bolinho de Queijo (12 unid)', 'porcoes', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-porcoes-04', 'Carne de Sol 400gr', 'porcoes', 65.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-porcoes-05', 'Frango à Passarinho 500gr', 'porcoes', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-porcoes-06', 'Filé de Frango 500gr', 'porcoes', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-caldos-01', 'Caldo de Abóbora 400 ml', 'caldos', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-caldos-02', 'Caldo de Feijão com Costela 400 ml', 'caldos', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-caldos-03', 'Caldo Verde 400 ml', 'caldos', 45.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-bebidas-01', 'Água sem Gás 500ml', 'bebidas', 4.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-bebidas-02', 'Água com Gás 500ml', 'bebidas', 5.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-bebidas-03', 'Coca Cola Zero Lata', 'bebidas', 5.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-bebidas-04', 'Guaraná Antarctica Lata', 'bebidas', 5.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-vinhos-01', 'VH Cabernet Sauvignon', 'vinhos', 89.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-vinhos-02', 'VH Chardonnay', 'vinhos', 89.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
	('menu-vinhos-03', 'VH Merlot', 'vinhos', 89.90, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')
`,
		},
	}
}
