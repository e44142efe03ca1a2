package types

import "github.com/google/uuid"

const (
	RatingMin     = 1
	RatingMax     = 5
	RatingDefault = 5
)

// RatingRecord is the body of POST /api/ratings, one per rated product.
type RatingRecord struct {
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
}

// ValidRating reports whether the score is inside the accepted band.
func ValidRating(score int) bool {
	return score >= RatingMin && score <= RatingMax
}
