package payment

import (
	"regexp"
	"strconv"

	"github.com/mmynk/vibewalk/internal/models"
)

var firstNumber = regexp.MustCompile(`\d+`)

// TicketPrice returns the first whole number in a price label, in SGD.
// "SGD $53" is 53, "Free" and "Check On-site" are 0.
func TicketPrice(label string) int64 {
	m := firstNumber.FindString(label)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Bookable reports whether a stop has a paid ticket that can be checked out.
func Bookable(stop models.Stop) bool {
	return TicketPrice(stop.Price) > 0
}

// EstimateTotal sums ticket prices and transport costs over a route.
// Only the whole-dollar part of each label counts.
func EstimateTotal(stops []models.Stop) int64 {
	var total int64
	for _, s := range stops {
		total += TicketPrice(s.Price)
		if s.Transport != nil {
			total += TicketPrice(s.Transport.Cost)
		}
	}
	return total
}
