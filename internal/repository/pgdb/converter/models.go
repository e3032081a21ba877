package converter

import "time"

// ProductModel represents a row of the products table.
type ProductModel struct {
	ID              int64      `db:"id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	LongDescription string     `db:"long_description"`
	Price           string     `db:"price"`
	Category        string     `db:"category"`
	Tag             string     `db:"tag"`
	Rating          float64    `db:"rating"`
	Reviews         int        `db:"reviews"`
	Benefits        []string   `db:"benefits"`
	ImageURL        string     `db:"image_url"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// AdminUserModel represents a row of the admin_users table.
type AdminUserModel struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// ContactMessageModel represents a row of the contact_messages table.
type ContactMessageModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
