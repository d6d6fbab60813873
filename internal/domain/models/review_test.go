package models

import "testing"

func TestValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		if !ValidRating(r) {
			t.Errorf("rating %d should be valid", r)
		}
	}
	for _, r := range []int{0, -1, 6, 100} {
		if ValidRating(r) {
			t.Errorf("rating %d should be invalid", r)
		}
	}
}

func TestReviewerEligible(t *testing.T) {
	const driver, passenger, stranger = int64(1), int64(2), int64(3)
	if !ReviewerEligible(driver, driver, passenger) {
		t.Error("driver must be eligible")
	}
	if !ReviewerEligible(passenger, driver, passenger) {
		t.Error("passenger must be eligible")
	}
	if ReviewerEligible(stranger, driver, passenger) {
		t.Error("third party must not be eligible")
	}
}
