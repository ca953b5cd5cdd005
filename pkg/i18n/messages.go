package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleAr: arMessages,
		LocaleEn: enMessages,
	}
}

var arMessages = map[string]string{
	// Common errors
	"error.not_found":         "العنصر المطلوب غير موجود",
	"error.bad_request":       "طلب غير صالح",
	"error.internal":          "حدث خطأ في الخادم",
	"error.too_many_requests": "طلبات كثيرة، يرجى المحاولة بعد قليل",
	"error.validation":        "البيانات المدخلة غير صحيحة",

	// Cart & favorites toasts
	"cart.line_added":         "تمت إضافة %s للسلة",
	"favorites.added":         "تمت إضافة %s للمفضلة",
	"favorites.removed":       "تمت إزالة %s من المفضلة",
	"order.exported":          "تم إرسال طلبك! كسبت %d نقطة",
	"cart.invalid_selection":  "الوحدة المختارة غير متوفرة لهذا المنتج",

	// Advisor
	"advisor.greeting":           "هلا بك في ركن العمارية! أنا مساعدك الذكي. وش حاب تطبخ اليوم؟ أو عندك سؤال عن منتجاتنا؟",
	"advisor.missing_key":        "عذراً، خدمة المساعد الذكي غير متوفرة حالياً (مفتاح API مفقود).",
	"advisor.recipe_failed":      "حدث خطأ أثناء الاتصال بالشيف الذكي. يرجى المحاولة لاحقاً.",
	"advisor.general_failed":     "حدث خطأ، يرجى المحاولة لاحقاً.",
	"advisor.image_failed":       "عذراً، لم أتمكن من تحليل الصورة. حاول مرة أخرى.",
	"advisor.description_no_key": "وصف تلقائي غير متوفر.",
	"advisor.empty_reply":        "لا توجد اقتراحات حالياً.",

	// Order export
	"order.header":    "طلب جديد من %s",
	"order.line":      "- %s (%s) × %d = %s %s",
	"order.subtotal":  "المجموع: %s %s",
	"order.delivery":  "التوصيل: %s %s",
	"order.total":     "الإجمالي: %s %s",
	"order.points":    "نقاط الولاء المكتسبة: %d",
	"order.reference": "رقم الطلب: %s",
}

var enMessages = map[string]string{
	// Common errors
	"error.not_found":         "The requested resource was not found",
	"error.bad_request":       "Bad request",
	"error.internal":          "Internal server error",
	"error.too_many_requests": "Too many requests. Please try again later",
	"error.validation":        "Invalid input",

	// Cart & favorites toasts
	"cart.line_added":        "%s added to cart",
	"favorites.added":        "%s added to favorites",
	"favorites.removed":      "%s removed from favorites",
	"order.exported":         "Your order was sent! You earned %d points",
	"cart.invalid_selection": "The selected unit is not available for this product",

	// Advisor
	"advisor.greeting":           "Welcome to Rokn Al-Amaria! I'm your smart assistant. What would you like to cook today?",
	"advisor.missing_key":        "Sorry, the smart assistant is currently unavailable (missing API key).",
	"advisor.recipe_failed":      "Something went wrong contacting the smart chef. Please try again later.",
	"advisor.general_failed":     "Something went wrong, please try again later.",
	"advisor.image_failed":       "Sorry, I couldn't analyze the image. Please try again.",
	"advisor.description_no_key": "Automatic description unavailable.",
	"advisor.empty_reply":        "No suggestions right now.",

	// Order export
	"order.header":    "New order from %s",
	"order.line":      "- %s (%s) x %d = %s %s",
	"order.subtotal":  "Subtotal: %s %s",
	"order.delivery":  "Delivery: %s %s",
	"order.total":     "Total: %s %s",
	"order.points":    "Loyalty points earned: %d",
	"order.reference": "Order ref: %s",
}

// NewDefaultBundle creates a bundle preloaded with DefaultMessages
func NewDefaultBundle(fallback Locale) *Bundle {
	b := NewBundle(fallback)
	for locale, msgs := range DefaultMessages() {
		b.LoadMessages(locale, msgs)
	}
	return b
}
