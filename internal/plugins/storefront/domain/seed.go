package domain

import (
	"net/url"

	"github.com/shopspring/decimal"
)

func seedImage(query string) string {
	return "https://tse2.mm.bing.net/th?q=" + url.QueryEscape(query) + "&w=500&h=500&c=7&rs=1&p=0"
}

func intPtr(v int) *int { return &v }

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func nullPrice(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

// SeedProducts 초기 카탈로그 (Position 순)
func SeedProducts() []Product {
	products := []Product{
		{
			ID: "b1", Name: "بوكس الشواء الملكي",
			Description: "كل ما تحتاجه للشواء: 24 برجر أمريكانا + كيس بطاطس + خبز برجر + صوص شيدر.",
			Price:       price(99), Category: "بكجات التوفير", Brand: "ركن العمارية", Unit: "بكج",
			Image:         seedImage("bbq burger kit food box"),
			OfferQuantity: intPtr(1), OfferPrice: nullPrice(85), IsNew: true,
		},
		{
			ID: "b2", Name: "بكج سحور رمضان",
			Description: "كرتون دجاج سيارا + كيس سمبوسة كبير + عجينة رقائق + لبنة المراعي.",
			Price:       price(180), Category: "بكجات التوفير", Brand: "ركن العمارية", Unit: "بكج",
			Image:           seedImage("ramadan food box frozen"),
			DiscountPercent: intPtr(15),
		},
		{
			ID: "1", Name: "برجر بقري أمريكانا",
			Description: "برجر بقري بالبهارات العربية الكلاسيكية، 24 قطعة.",
			Price:       price(45), Category: "لحوم", Brand: "أمريكانا", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(250),
			Image:           seedImage("Americana beef burger package"),
			DiscountPercent: intPtr(10),
		},
		{
			ID: "2", Name: "ناجت دجاج أمريكانا",
			Description: "ناجت دجاج مقرمش وسريع التحضير، عبوة عائلية.",
			Price:       price(38), Category: "دواجن مجمدة", Brand: "أمريكانا", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(210),
			Image: seedImage("Americana chicken nuggets bag"),
		},
		{
			ID: "3", Name: "لحم مفروم غنم أمريكانا",
			Description: "لحم غنم مفروم ناعم ممتاز، 400 جرام.",
			Price:       price(12), Category: "لحوم", Brand: "أمريكانا", Unit: "حبة",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(220),
			Image: seedImage("Americana minced mutton meat"),
		},
		{
			ID: "4", Name: "دجاج ساديا مجمد 1100 جم",
			Description: "دجاج كامل مجمد بدون أحشاء، مذبوح حلال.",
			Price:       price(18), Category: "دواجن مجمدة", Brand: "ساديا", Unit: "حبة",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(165),
			Image: seedImage("Sadia frozen whole chicken"), IsNew: true,
		},
		{
			ID: "5", Name: "صدور دجاج طرية ساديا",
			Description: "صدور دجاج فيليه طرية ومجمدة فردياً، 2 كجم.",
			Price:       price(65), Category: "دواجن مجمدة", Brand: "ساديا", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(380),
			Image: seedImage("Sadia chicken breast fillets bag"),
		},
		{
			ID: "6", Name: "ستربس دجاج سيارا",
			Description: "شرائح دجاج (ستربس) حار ومقرمش 750 جم.",
			Price:       price(28), Category: "دواجن مجمدة", Brand: "سيارا", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(260),
			Image: seedImage("Seara spicy chicken strips"),
		},
		{
			ID: "7", Name: "دجاج سيارا كامل",
			Description: "كرتون دجاج سيارا مجمد 10 حبات * 1000 جم.",
			Price:       price(150), Category: "دواجن مجمدة", Brand: "سيارا", Unit: "كرتون",
			Image:           seedImage("Seara frozen chicken box"),
			DiscountPercent: intPtr(5),
		},
		{
			ID: "8", Name: "بطاطس ماكين رفيعة",
			Description: "أصابع بطاطس رفيعة للقلي، مقرمشة وذهبية 2.5 كجم.",
			Price:       price(35), Category: "بطاطس", Brand: "ماكين", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(130),
			Image: seedImage("McCain french fries bag"),
		},
		{
			ID: "9", Name: "بطاطس تويستر لامب وستون",
			Description: "بطاطس تويستر (لولبية) متبلة، المفضلة للمطاعم.",
			Price:       price(42), Category: "بطاطس", Brand: "لامب وستون", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(195),
			Image: seedImage("Lamb Weston twister fries bag"), IsNew: true,
		},
		{
			ID: "10", Name: "بطاطس الذهبية",
			Description: "بطاطس كلاسيكية 2.5 كجم، جودة عالية وسعر منافس.",
			Price:       price(25), Category: "بطاطس", Brand: "الذهبية", Unit: "كيس",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(95),
			Image: seedImage("Golden french fries bag"),
		},
		{
			ID: "11", Name: "دجاج رضوى مبرد",
			Description: "دجاج طازج مبرد، إنتاج محلي يومي، 1000 جم.",
			Price:       price(21), Category: "دواجن مبردة", Brand: "رضوى", Unit: "حبة",
			SecondaryUnit: "كرتون", SecondaryPrice: nullPrice(190),
			Image: seedImage("Radwa fresh chicken"),
		},
		{
			ID: "12", Name: "فيليه صدور اليوم",
			Description: "صدور دجاج مبردة طازجة من مزارع اليوم، 450 جم.",
			Price:       price(24), Category: "دواجن مبردة", Brand: "اليوم", Unit: "طبق",
			Image: seedImage("Alyoum chicken breast fillet"),
		},
		{
			ID: "13", Name: "إسكالوب دجاج كواليكو",
			Description: "إسكالوب دجاج فاخر ومتبل، جاهز للقلي.",
			Price:       price(32), Category: "دواجن مجمدة", Brand: "كواليكو", Unit: "كيس",
			Image: seedImage("Qualiko chicken escalope"),
		},
		{
			ID: "14", Name: "جبنة شيدر سائلة",
			Description: "صوص جبنة شيدر للمطاعم والبرجر، 1 كجم.",
			Price:       price(30), Category: "صوصات", Brand: "بوك", Unit: "حبة",
			Image: seedImage("Puck cheddar cheese jar"),
		},
		{
			ID: "15", Name: "زيت قلي مازولا",
			Description: "زيت ذرة نقي للقلي والطبخ، 9 لتر.",
			Price:       price(95), Category: "زيوت وسمن", Brand: "مازولا", Unit: "جالون",
			Image: seedImage("Mazola corn oil 9L"),
		},
		{
			ID: "16", Name: "سمن نباتي شوكة وملعقة",
			Description: "سمن بنكهة الزبدة، مثالي للحلويات والمأكولات الشعبية.",
			Price:       price(18), Category: "زيوت وسمن", Brand: "أخرى", Unit: "علبة",
			Image: seedImage("Vegetable ghee spoon and fork"),
		},
		{
			ID: "17", Name: "جبنة موزاريلا مبشورة",
			Description: "جبنة موزاريلا للبيتزا والمعجنات، تمط وتذوب.",
			Price:       price(40), Category: "أجبان وألبان", Brand: "المراعي", Unit: "كيس",
			Image: seedImage("Almarai mozzarella cheese shredded"),
		},
	}

	for i := range products {
		products[i].Position = int64(i)
	}
	return products
}
