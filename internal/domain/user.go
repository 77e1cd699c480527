package domain

import "time"

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non-binary"
	GenderOther     Gender = "other"

	// FindGenderEveryone disables the gender filter on suggestions.
	FindGenderEveryone Gender = "everyone"
)

// ValidGender reports whether g is an allowed profile gender.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderOther:
		return true
	}
	return false
}

// ValidFindGender reports whether g is an allowed dating preference.
func ValidFindGender(g Gender) bool {
	return g == FindGenderEveryone || ValidGender(g)
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Bio          *string   `json:"bio" db:"bio"`
	Age          *int      `json:"age" db:"age"`
	PhotoURL     *string   `json:"photo_url" db:"photo_url"`
	Gender       Gender    `json:"gender" db:"gender"`
	FindGender   Gender    `json:"find_gender" db:"find_gender"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
