package services

import (
	"sort"
	"strings"

	"stayhub/errors"
	"stayhub/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

// RoomTypeSearchService tìm loại phòng theo tên gần đúng, chấp nhận gõ
// thiếu dấu hoặc sai chính tả nhẹ.
type RoomTypeSearchService struct {
	db *gorm.DB
}

func NewRoomTypeSearchService(db *gorm.DB) *RoomTypeSearchService {
	return &RoomTypeSearchService{db: db}
}

// normalizeName bỏ dấu và lowercase để so khớp
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
}

// Search trả về tối đa limit loại phòng khớp query nhất.
// propertyID = 0 nghĩa là tìm trên mọi property.
func (s *RoomTypeSearchService) Search(query string, propertyID uint, limit int) ([]models.RoomType, error) {
	if limit < 1 {
		limit = 5
	}

	tx := s.db.Model(&models.RoomType{})
	if propertyID != 0 {
		tx = tx.Where("property_id = ?", propertyID)
	}
	var roomTypes []models.RoomType
	if err := tx.Find(&roomTypes).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc danh sách loại phòng", err)
	}
	if len(roomTypes) == 0 {
		return nil, nil
	}

	byNormalized := make(map[string][]models.RoomType, len(roomTypes))
	names := make([]string, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		normalized := normalizeName(roomType.Name)
		if _, seen := byNormalized[normalized]; !seen {
			names = append(names, normalized)
		}
		byNormalized[normalized] = append(byNormalized[normalized], roomType)
	}

	normalizedQuery := normalizeName(query)
	cm := closestmatch.New(names, []int{2, 3})
	candidates := cm.ClosestN(normalizedQuery, limit)

	// Xếp lại theo khoảng cách levenshtein để ổn định thứ tự
	sort.SliceStable(candidates, func(i, j int) bool {
		di := levenshtein.DistanceForStrings([]rune(normalizedQuery), []rune(candidates[i]), levenshtein.DefaultOptions)
		dj := levenshtein.DistanceForStrings([]rune(normalizedQuery), []rune(candidates[j]), levenshtein.DefaultOptions)
		return di < dj
	})

	var results []models.RoomType
	for _, name := range candidates {
		results = append(results, byNormalized[name]...)
		if len(results) >= limit {
			results = results[:limit]
			break
		}
	}
	return results, nil
}
