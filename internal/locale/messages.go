package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// messages holds page labels keyed by message id. English doubles as the
// fallback for keys missing in other locales.
var messages = map[Locale]map[string]string{
	English: {
		"site.title":          "Realty Marketplace",
		"nav.home":            "Home",
		"nav.properties":      "Properties",
		"nav.brokers":         "Brokers",
		"nav.news":            "News",
		"nav.admin":           "Dashboard",
		"nav.login":           "Sign in",
		"nav.register":        "Create account",
		"pager.previous":      "Previous",
		"pager.next":          "Next",
		"pager.summary":       "Page %d of %d",
		"list.empty":          "Nothing to show yet.",
		"property.price":      "Price",
		"property.area":       "%d m²",
		"property.rooms":      "%d rooms",
		"broker.agency":       "Agency",
		"admin.title":         "Dashboard",
		"admin.properties":    "Listed properties",
		"admin.brokers":       "Registered brokers",
		"admin.news":          "News articles",
		"auth.login.title":    "Sign in",
		"auth.register.title": "Create an account",
		"auth.email":          "Email",
		"auth.password":       "Password",
		"auth.full_name":      "Full name",
		"auth.submit":         "Continue",
		"unauthorized.title":  "Access denied",
		"unauthorized.body":   "Your account cannot open this page.",
		"error.title":         "Something went wrong",
		"error.not_found":     "The page you are looking for does not exist.",
		"error.upstream":      "Listings are temporarily unavailable.",
	},
	Vietnamese: {
		"site.title":          "Sàn Bất Động Sản",
		"nav.home":            "Trang chủ",
		"nav.properties":      "Bất động sản",
		"nav.brokers":         "Môi giới",
		"nav.news":            "Tin tức",
		"nav.admin":           "Bảng điều khiển",
		"nav.login":           "Đăng nhập",
		"nav.register":        "Đăng ký",
		"pager.previous":      "Trước",
		"pager.next":          "Sau",
		"pager.summary":       "Trang %d / %d",
		"list.empty":          "Chưa có dữ liệu.",
		"property.price":      "Giá",
		"property.area":       "%d m²",
		"property.rooms":      "%d phòng",
		"broker.agency":       "Công ty",
		"admin.title":         "Bảng điều khiển",
		"admin.properties":    "Bất động sản đã đăng",
		"admin.brokers":       "Môi giới đã đăng ký",
		"admin.news":          "Bài viết",
		"auth.login.title":    "Đăng nhập",
		"auth.register.title": "Tạo tài khoản",
		"auth.email":          "Email",
		"auth.password":       "Mật khẩu",
		"auth.full_name":      "Họ và tên",
		"auth.submit":         "Tiếp tục",
		"unauthorized.title":  "Không có quyền truy cập",
		"unauthorized.body":   "Tài khoản của bạn không thể mở trang này.",
		"error.title":         "Đã xảy ra lỗi",
		"error.not_found":     "Trang bạn tìm không tồn tại.",
		"error.upstream":      "Danh sách tạm thời không khả dụng.",
	},
	Lao: {
		"site.title":          "ຕະຫຼາດອະສັງຫາລິມະຊັບ",
		"nav.home":            "ໜ້າຫຼັກ",
		"nav.properties":      "ອະສັງຫາລິມະຊັບ",
		"nav.brokers":         "ນາຍໜ້າ",
		"nav.news":            "ຂ່າວ",
		"nav.admin":           "ແຜງຄວບຄຸມ",
		"nav.login":           "ເຂົ້າສູ່ລະບົບ",
		"nav.register":        "ສ້າງບັນຊີ",
		"pager.previous":      "ກ່ອນໜ້າ",
		"pager.next":          "ຕໍ່ໄປ",
		"pager.summary":       "ໜ້າ %d ຈາກ %d",
		"list.empty":          "ຍັງບໍ່ມີຂໍ້ມູນ.",
		"property.price":      "ລາຄາ",
		"property.area":       "%d ມ²",
		"property.rooms":      "%d ຫ້ອງ",
		"auth.email":          "ອີເມວ",
		"auth.password":       "ລະຫັດຜ່ານ",
		"auth.submit":         "ສືບຕໍ່",
		"unauthorized.title":  "ບໍ່ມີສິດເຂົ້າເຖິງ",
		"error.title":         "ມີບາງຢ່າງຜິດພາດ",
		"error.not_found":     "ບໍ່ພົບໜ້າທີ່ທ່ານຊອກຫາ.",
		"auth.login.title":    "ເຂົ້າສູ່ລະບົບ",
		"auth.register.title": "ສ້າງບັນຊີ",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for l, entries := range messages {
		tag := l.Tag()
		for key, fallback := range messages[English] {
			msg, ok := entries[key]
			if !ok {
				msg = fallback
			}
			// SetString only fails on malformed tags, which the map rules out.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Printer returns a message printer for l backed by the site catalog.
func Printer(l Locale) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(cat))
}
