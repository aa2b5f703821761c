package utils

import "strconv"

func StringPtr(s string) *string {
	return &s
}

func Uint64Ptr(v uint64) *uint64 {
	return &v
}

// ParseUint64Slice разбирает срез строк в числа, пропуская мусор.
func ParseUint64Slice(strs []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(strs))
	for _, s := range strs {
		if s == "" {
			continue
		}
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
