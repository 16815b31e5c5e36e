package models

import (
	"time"

	"gorm.io/gorm"
)

// Bill represents a scanned receipt with its extracted total
type Bill struct {
	gorm.Model
	Name        string
	Date        string
	Comment     string
	Image       string `gorm:"type:text;not null" json:"-"`
	ContentType string
	Amount      float64 `gorm:"not null"`
	SourceLine  string
}

// Document is an uploaded PDF kept around so questions can be asked against it
type Document struct {
	ID        string `gorm:"primaryKey"`
	Filename  string
	Text      string `gorm:"type:text" json:"-"`
	Pages     int
	CreatedAt time.Time
}

// TextLine represents a line of text with its position from OCR
type TextLine struct {
	Text   string
	X      int
	Y      int
	Width  int
	Height int
}
