package util

const DefaultPageSize = 20

// Calculate clamps page/size and converts them to offset/limit.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	offset = (page - 1) * size
	return offset, size
}
