package classify

// Stance keyword tables, matched against lowercased title+snippet text.
// English and Arabic sets mirror the vocabulary the verdict pipeline works
// in; extending a language means extending data, not code.

var supportingKeywords = []string{
	"confirm", "confirmed", "verify", "verified", "true", "accurate", "correct",
	"support", "back", "prove", "evidence", "fact", "reality", "actual",
	"official", "announced", "declared", "stated", "reported",
	"تأكيد", "تأكد", "صحيح", "حقيقي", "دعم", "إثبات", "دليل", "واقع",
	"رسمي", "أعلن", "صرح", "ذكر", "أفاد",
}

var opposingKeywords = []string{
	"deny", "denied", "false", "fake", "hoax", "misinformation", "disinformation",
	"incorrect", "wrong", "untrue", "debunk", "refute", "contradict", "oppose",
	"reject", "dispute", "challenge", "question", "doubt", "skeptical",
	"إنكار", "كاذب", "مزيف", "خاطئ", "خطأ", "رفض", "تناقض", "معارضة",
	"تشكيك", "شك", "تساؤل", "تحدي",
}

var neutralKeywords = []string{
	"unclear", "uncertain", "unknown", "investigating", "pending", "ongoing",
	"developing", "breaking", "update", "report", "news", "analysis",
	"غير واضح", "غير مؤكد", "غير معروف", "تحقيق", "قيد البحث", "جاري",
	"تطوير", "عاجل", "تحديث", "تقرير", "خبر", "تحليل",
}

// credibleDomains earn a weight multiplier: wire agencies, public
// broadcasters, institutional and government domains.
var credibleDomains = []string{
	"reuters.com", "bbc.com", "cnn.com", "ap.org", "afp.com",
	"aljazeera.com", "dw.com", "france24.com", "rt.com",
	"gov.", "edu.", "who.int", "un.org", "imf.org", "worldbank.org",
	"spa.gov.sa", "wam.ae", "mena.gov.ae", "qna.org.qa",
	"alwatan.com.sa", "okaz.com.sa", "alriyadh.com",
	"alhayat.com", "asharqalawsat.com", "alquds.co.uk",
}

// socialDomains earn a penalty multiplier: user-generated platforms and
// blog hosts.
var socialDomains = []string{
	"twitter.com", "facebook.com", "instagram.com", "tiktok.com",
	"blog", "blogspot", "wordpress.com",
}

const (
	credibleWeight = 2.0
	socialPenalty  = 0.5
)
