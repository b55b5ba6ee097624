package handlers

var (
	MsgLoggedIn          = "Tizimga kirdingiz"
	MsgGenericError      = "Xatolik yuz berdi"
	MsgGoogleSignInError = "Google orqali kirishda xatolik yuz berdi"
)
