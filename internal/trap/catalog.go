// Package trap supplies the built-in trap content library and persona
// based suggestions for the host dashboard.
package trap

import (
	"math/rand"
	"strings"

	"lixi-server/internal/model"
)

// Trap categories.
const (
	CategoryPhysical     = "physical"
	CategoryEmbarrassing = "embarrassing"
	CategoryService      = "service"
	CategoryPromotion    = "promotion"
	CategoryCustom       = "custom"
)

// Library is the built-in trap catalog. Intensity runs 1 (cute) to 3
// (nightmare).
var Library = []model.TrapItem{
	{ID: "p1", Type: model.TrapAction, Content: "Plank trong 30 giây (có người đếm)", Category: CategoryPhysical, Intensity: 2},
	{ID: "p2", Type: model.TrapAction, Content: "Squat 20 cái ngay tại chỗ", Category: CategoryPhysical, Intensity: 2},
	{ID: "p3", Type: model.TrapAction, Content: "Nhảy lò cò 1 vòng quanh phòng", Category: CategoryPhysical, Intensity: 1},
	{ID: "p4", Type: model.TrapAction, Content: "Hít đất 10 cái", Category: CategoryPhysical, Intensity: 2},
	{ID: "p5", Type: model.TrapAction, Content: "Vừa plank vừa hát Quốc ca", Category: CategoryPhysical, Intensity: 3},

	{ID: "e1", Type: model.TrapAction, Content: "Hát một bài nhạc thiếu nhi bằng giọng Opera", Category: CategoryEmbarrassing, Intensity: 2},
	{ID: "e2", Type: model.TrapAction, Content: "Làm mặt xấu nhất có thể để mọi người chụp meme", Category: CategoryEmbarrassing, Intensity: 2},
	{ID: "e3", Type: model.TrapAction, Content: "Dùng mông viết tên mình lên không trung", Category: CategoryEmbarrassing, Intensity: 3},
	{ID: "e4", Type: model.TrapAction, Content: "Gọi điện cho người yêu/crush nói \"Gấu gấu meo meo\"", Category: CategoryEmbarrassing, Intensity: 3},
	{ID: "e5", Type: model.TrapAction, Content: "Kể một chuyện cười, nếu không ai cười phải kể lại", Category: CategoryEmbarrassing, Intensity: 2},

	{ID: "s1", Type: model.TrapAction, Content: "Rửa bát toàn bộ bữa tiệc hôm nay", Category: CategoryService, Intensity: 3},
	{ID: "s2", Type: model.TrapAction, Content: "Rót nước mời từng người trong phòng", Category: CategoryService, Intensity: 1},
	{ID: "s3", Type: model.TrapAction, Content: "Đấm lưng cho chủ phòng 5 phút", Category: CategoryService, Intensity: 1},
	{ID: "s4", Type: model.TrapAction, Content: "Dọn sạch bàn tiệc sau khi ăn xong", Category: CategoryService, Intensity: 2},

	{ID: "m1", Type: model.TrapAction, Content: "Đăng story khen chủ tiệc đẹp trai nhất vùng", Category: CategoryPromotion, Intensity: 1},
	{ID: "m2", Type: model.TrapAction, Content: "Quay clip 15s giới thiệu chủ tiệc đỉnh cao", Category: CategoryPromotion, Intensity: 2},
}

// ByCategory returns the catalog traps in a category.
func ByCategory(category string) []model.TrapItem {
	var out []model.TrapItem
	for _, t := range Library {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// ByIntensity returns the catalog traps of an intensity level.
func ByIntensity(level int) []model.TrapItem {
	var out []model.TrapItem
	for _, t := range Library {
		if t.Intensity == level {
			out = append(out, t)
		}
	}
	return out
}

// Random returns a random catalog trap, optionally filtered by intensity
// (0 means any).
func Random(intensity int) model.TrapItem {
	pool := Library
	if intensity > 0 {
		if filtered := ByIntensity(intensity); len(filtered) > 0 {
			pool = filtered
		}
	}
	return pool[rand.Intn(len(pool))]
}

// SuggestForPersona picks a trap matching a free-text persona description
// by keyword, falling back to a random catalog entry.
func SuggestForPersona(persona string) model.TrapItem {
	lower := strings.ToLower(persona)

	if strings.Contains(lower, "khoẻ") || strings.Contains(lower, "gym") {
		pool := ByCategory(CategoryPhysical)
		return pool[rand.Intn(len(pool))]
	}
	if strings.Contains(lower, "hài") || strings.Contains(lower, "lầy") {
		pool := ByCategory(CategoryEmbarrassing)
		return pool[rand.Intn(len(pool))]
	}
	if strings.Contains(lower, "ngoan") || strings.Contains(lower, "em") {
		return model.TrapItem{
			ID:        "persona-kid",
			Type:      model.TrapText,
			Content:   "Chúc bé ngoan hay ăn chóng lớn",
			Category:  CategoryCustom,
			Intensity: 1,
		}
	}
	return Library[rand.Intn(len(Library))]
}
