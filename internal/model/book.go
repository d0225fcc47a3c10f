package model

// Book is a catalog entry. Records are created outside the HTTP surface and
// are never mutated by this service.
type Book struct {
	ID     uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title  string  `json:"title" gorm:"not null"`
	Author string  `json:"author" gorm:"not null"`
	Rating float64 `json:"rating" gorm:"not null"`
}
