package signup

// User-facing notification texts. The storefront speaks Uzbek to its users.
var (
	MsgGenericError = "Xatolik yuz berdi"
	MsgServerError  = "Server xatosi. Iltimos, qayta urinib ko'ring."
	MsgInvalidData  = "Ma'lumotlar noto'g'ri. Iltimos, tekshiring."
	MsgNoResponse   = "Server javob bermadi. Iltimos, qayta urinib ko'ring."
	MsgRegistered   = "Ro'yxatdan muvaffaqiyatli o'tdingiz!"
	MsgOTPSent      = "Tasdiqlash kodi emailingizga yuborildi"
	MsgOTPExpired   = "Kod muddati tugagan. Yangi kod so'rang."
)
