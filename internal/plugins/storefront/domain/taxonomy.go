package domain

// AllFilter 카테고리/브랜드 "전체" 필터 값 (저장되지 않음)
const AllFilter = "الكل"

// 신규/가져오기 상품 기본값
const (
	DefaultCategory = "عام"
	DefaultBrand    = "أخرى"
	DefaultUnit     = "حبة"
	DefaultImage    = "https://picsum.photos/400/300"
)

// TaxonomyKind 분류 종류
type TaxonomyKind string

const (
	TaxonomyCategory TaxonomyKind = "category"
	TaxonomyBrand    TaxonomyKind = "brand"
)

// Valid 지원하는 종류인지 확인
func (k TaxonomyKind) Valid() bool {
	return k == TaxonomyCategory || k == TaxonomyBrand
}

// TaxonomyEntry 카테고리/브랜드 항목
type TaxonomyEntry struct {
	ID       uint64       `gorm:"primaryKey" json:"-"`
	Kind     TaxonomyKind `gorm:"size:20;not null;uniqueIndex:idx_taxonomy_kind_name" json:"kind"`
	Name     string       `gorm:"size:100;not null;uniqueIndex:idx_taxonomy_kind_name" json:"name"`
	Position int          `gorm:"not null;default:0" json:"position"`
}

// TableName GORM 테이블명
func (TaxonomyEntry) TableName() string {
	return "storefront_taxonomy"
}

// Taxonomy 카테고리/브랜드 목록 응답
type Taxonomy struct {
	Categories      []string `json:"categories"`
	Brands          []string `json:"brands"`
	AvailableBrands []string `json:"available_brands,omitempty"`
}

// TaxonomyRequest 분류 추가/삭제 요청
type TaxonomyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// DefaultCategories 초기 카테고리 ("الكل" 제외)
func DefaultCategories() []string {
	return []string{
		"بكجات التوفير",
		"لحوم",
		"دواجن مجمدة",
		"دواجن مبردة",
		"بطاطس",
		"خضروات",
		"معجنات",
		"أجبان وألبان",
		"زيوت وسمن",
		"صوصات",
		"فواكه",
	}
}

// DefaultBrands 초기 브랜드 ("الكل" 제외)
func DefaultBrands() []string {
	return []string{
		"ركن العمارية",
		"أمريكانا",
		"سيارا",
		"ساديا",
		"كواليكو",
		"ماكين",
		"لامب وستون",
		"الذهبية",
		"المراعي",
		"نادك",
		"رضوى",
		"اليوم",
		"بوك",
		"مازولا",
		"أخرى",
	}
}

// Units 선택 가능한 판매 단위
func Units() []string {
	return []string{"حبة", "كرتون", "كجم", "كيس", "شدة", "جالون", "علبة", "طبق", "بكج"}
}
