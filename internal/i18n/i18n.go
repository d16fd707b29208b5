// Package i18n holds the reply strings for every supported language.
package i18n

// Strings contains every user-facing phrase the bot sends.
type Strings struct {
	Expense          string
	Income           string
	Recorded         string
	From             string
	Cancelled        string
	Expired          string
	LinkFirst        string
	NoWallet         string
	NoCategory       string
	ConversionFailed string
	SaveFailed       string
	Balance          string
	ExpenseDetected  string
	IncomeDetected   string
	Confirm          string
	Cancel           string
	ConfirmPrompt    string
	Unlinked         string
}

var table = map[string]Strings{
	"en": {
		Expense:          "expense",
		Income:           "income",
		Recorded:         "Recorded",
		From:             "from",
		Cancelled:        "Cancelled",
		Expired:          "Session expired. Please try again.",
		LinkFirst:        "Please link your Bexly account first",
		NoWallet:         "No wallet found. Create one in Bexly app first.",
		NoCategory:       "No category found. Create one in Bexly app first.",
		ConversionFailed: "Currency conversion failed",
		SaveFailed:       "Could not save the transaction. Please try again.",
		Balance:          "Balance",
		ExpenseDetected:  "Expense Detected",
		IncomeDetected:   "Income Detected",
		Confirm:          "Confirm",
		Cancel:           "Cancel",
		ConfirmPrompt:    "Confirm?",
		Unlinked:         "Telegram account disconnected",
	},
	"vi": {
		Expense:          "chi tiêu",
		Income:           "thu nhập",
		Recorded:         "Đã ghi nhận",
		From:             "từ",
		Cancelled:        "Đã hủy",
		Expired:          "Phiên đã hết hạn. Vui lòng thử lại.",
		LinkFirst:        "Vui lòng liên kết tài khoản Bexly trước",
		NoWallet:         "Không tìm thấy ví. Tạo ví trong ứng dụng Bexly.",
		NoCategory:       "Không tìm thấy danh mục. Tạo trong ứng dụng Bexly.",
		ConversionFailed: "Chuyển đổi tiền tệ thất bại",
		SaveFailed:       "Không thể lưu giao dịch. Vui lòng thử lại.",
		Balance:          "Số dư",
		ExpenseDetected:  "Chi tiêu",
		IncomeDetected:   "Thu nhập",
		Confirm:          "Xác nhận",
		Cancel:           "Hủy",
		ConfirmPrompt:    "Xác nhận?",
		Unlinked:         "Đã ngắt kết nối tài khoản Telegram",
	},
	"ja": {
		Expense:          "支出",
		Income:           "収入",
		Recorded:         "記録しました",
		From:             "から",
		Cancelled:        "キャンセル",
		Expired:          "セッションの有効期限が切れました。もう一度お試しください。",
		LinkFirst:        "まずBexlyアカウントをリンクしてください",
		NoWallet:         "ウォレットが見つかりません。Bexlyアプリで作成してください。",
		NoCategory:       "カテゴリが見つかりません。Bexlyアプリで作成してください。",
		ConversionFailed: "通貨変換に失敗しました",
		SaveFailed:       "取引を保存できませんでした。もう一度お試しください。",
		Balance:          "残高",
		ExpenseDetected:  "支出",
		IncomeDetected:   "収入",
		Confirm:          "確認",
		Cancel:           "キャンセル",
		ConfirmPrompt:    "確認しますか?",
		Unlinked:         "Telegramアカウントの連携を解除しました",
	},
	"ko": {
		Expense:          "지출",
		Income:           "수입",
		Recorded:         "기록됨",
		From:             "에서",
		Cancelled:        "취소됨",
		Expired:          "세션이 만료되었습니다. 다시 시도하세요.",
		LinkFirst:        "먼저 Bexly 계정을 연결하세요",
		NoWallet:         "지갑을 찾을 수 없습니다. Bexly 앱에서 생성하세요.",
		NoCategory:       "카테고리를 찾을 수 없습니다. Bexly 앱에서 생성하세요.",
		ConversionFailed: "환전 실패",
		SaveFailed:       "거래를 저장할 수 없습니다. 다시 시도하세요.",
		Balance:          "잔액",
		ExpenseDetected:  "지출",
		IncomeDetected:   "수입",
		Confirm:          "확인",
		Cancel:           "취소",
		ConfirmPrompt:    "확인하시겠습니까?",
		Unlinked:         "텔레그램 계정 연결이 해제되었습니다",
	},
	"zh": {
		Expense:          "支出",
		Income:           "收入",
		Recorded:         "已记录",
		From:             "来自",
		Cancelled:        "已取消",
		Expired:          "会话已过期，请重试。",
		LinkFirst:        "请先关联您的Bexly账户",
		NoWallet:         "未找到钱包，请在Bexly应用中创建。",
		NoCategory:       "未找到类别，请在Bexly应用中创建。",
		ConversionFailed: "货币转换失败",
		SaveFailed:       "无法保存交易，请重试。",
		Balance:          "余额",
		ExpenseDetected:  "支出",
		IncomeDetected:   "收入",
		Confirm:          "确认",
		Cancel:           "取消",
		ConfirmPrompt:    "确认？",
		Unlinked:         "已解除Telegram账户绑定",
	},
	"th": {
		Expense:          "รายจ่าย",
		Income:           "รายรับ",
		Recorded:         "บันทึกแล้ว",
		From:             "จาก",
		Cancelled:        "ยกเลิกแล้ว",
		Expired:          "เซสชันหมดอายุ กรุณาลองอีกครั้ง",
		LinkFirst:        "กรุณาเชื่อมต่อบัญชี Bexly ก่อน",
		NoWallet:         "ไม่พบกระเป๋าเงิน กรุณาสร้างในแอป Bexly",
		NoCategory:       "ไม่พบหมวดหมู่ กรุณาสร้างในแอป Bexly",
		ConversionFailed: "แปลงสกุลเงินล้มเหลว",
		SaveFailed:       "ไม่สามารถบันทึกรายการได้ กรุณาลองอีกครั้ง",
		Balance:          "ยอดเงิน",
		ExpenseDetected:  "รายจ่าย",
		IncomeDetected:   "รายรับ",
		Confirm:          "ยืนยัน",
		Cancel:           "ยกเลิก",
		ConfirmPrompt:    "ยืนยัน?",
		Unlinked:         "ยกเลิกการเชื่อมต่อบัญชี Telegram แล้ว",
	},
	"id": {
		Expense:          "pengeluaran",
		Income:           "pemasukan",
		Recorded:         "Tercatat",
		From:             "dari",
		Cancelled:        "Dibatalkan",
		Expired:          "Sesi berakhir. Silakan coba lagi.",
		LinkFirst:        "Silakan hubungkan akun Bexly terlebih dahulu",
		NoWallet:         "Dompet tidak ditemukan. Buat di aplikasi Bexly.",
		NoCategory:       "Kategori tidak ditemukan. Buat di aplikasi Bexly.",
		ConversionFailed: "Konversi mata uang gagal",
		SaveFailed:       "Tidak dapat menyimpan transaksi. Silakan coba lagi.",
		Balance:          "Saldo",
		ExpenseDetected:  "Pengeluaran",
		IncomeDetected:   "Pemasukan",
		Confirm:          "Konfirmasi",
		Cancel:           "Batal",
		ConfirmPrompt:    "Konfirmasi?",
		Unlinked:         "Akun Telegram telah diputuskan",
	},
}

// Lookup returns the strings for a language, falling back to English.
func Lookup(lang string) Strings {
	if s, ok := table[lang]; ok {
		return s
	}
	return table["en"]
}

// Languages returns every supported language code.
func Languages() []string {
	return []string{"en", "vi", "ja", "ko", "zh", "th", "id"}
}
