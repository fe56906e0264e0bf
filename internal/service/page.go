package service

import "github.com/dtroode/authgate/internal/model"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// NormalizePage clamps a requested page to the allowed bounds.
func NormalizePage(limit, offset int) model.Page {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return model.Page{Limit: limit, Offset: offset}
}
