package submit_review

// SubmitReviewRequest HTTP request model
type SubmitReviewRequest struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}
