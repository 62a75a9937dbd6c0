package usecase

import "github.com/user/mina-service/internal/entity"

// Paginate returns records[offset:offset+pageSize], clamped to bounds, and
// whether records remain after the page.
func Paginate(records []entity.CompanyRecord, offset, pageSize int) ([]entity.CompanyRecord, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(records) {
		offset = len(records)
	}
	end := offset + pageSize
	if pageSize <= 0 || end > len(records) {
		end = len(records)
	}

	page := make([]entity.CompanyRecord, end-offset)
	copy(page, records[offset:end])
	return page, end < len(records)
}
