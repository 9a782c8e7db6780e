package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleKo: koMessages,
		LocaleEn: enMessages,
		LocaleJa: jaMessages,
	}
}

var koMessages = map[string]string{
	// Common errors
	"error.not_found":         "요청한 리소스를 찾을 수 없습니다",
	"error.unauthorized":      "인증이 필요합니다",
	"error.forbidden":         "접근 권한이 없습니다",
	"error.bad_request":       "잘못된 요청입니다",
	"error.internal":          "서버 내부 오류가 발생했습니다",
	"error.too_many_requests": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요",
	"error.validation":        "입력값이 올바르지 않습니다",

	// Auth
	"auth.login_success":    "로그인 되었습니다",
	"auth.login_failed":     "아이디 또는 비밀번호가 올바르지 않습니다",
	"auth.token_expired":    "인증 토큰이 만료되었습니다. 다시 로그인해주세요",
	"auth.token_invalid":    "유효하지 않은 인증 토큰입니다",
	"auth.register_success": "회원가입이 완료되었습니다",
	"auth.duplicate_id":     "이미 사용 중인 아이디입니다",
	"auth.duplicate_email":  "이미 사용 중인 이메일입니다",
	"auth.logout_success":   "로그아웃 되었습니다",

	// Entries
	"entry.not_found":          "엔트리를 찾을 수 없습니다",
	"entry.create_success":     "엔트리가 생성되었습니다",
	"entry.update_success":     "엔트리가 저장되었습니다",
	"entry.publish_success":    "엔트리가 발행되었습니다",
	"entry.unpublish_success":  "엔트리 발행이 취소되었습니다",
	"entry.archive_success":    "엔트리가 보관되었습니다",
	"entry.restore_success":    "엔트리가 복원되었습니다",
	"entry.delete_success":     "엔트리가 삭제되었습니다",
	"entry.version_conflict":   "다른 사용자가 먼저 수정했습니다. 새로고침 후 다시 시도해주세요",
	"entry.invalid_transition": "현재 상태에서는 수행할 수 없는 작업입니다",

	// Scheduled actions
	"schedule.created":      "예약이 등록되었습니다",
	"schedule.cancelled":    "예약이 취소되었습니다",
	"schedule.not_found":    "예약을 찾을 수 없습니다",
	"schedule.invalid_time": "예약 시간은 미래여야 합니다",

	// Spaces
	"space.not_found":       "스페이스를 찾을 수 없습니다",
	"space.suspended":       "정지된 스페이스입니다",
	"space.subdomain_taken": "이미 사용 중인 서브도메인입니다",

	// Content types
	"content_type.not_found": "콘텐츠 타입을 찾을 수 없습니다",

	// Rate limit
	"rate_limit.exceeded": "요청 제한을 초과했습니다. %d초 후 다시 시도해주세요",
}

var enMessages = map[string]string{
	// Common errors
	"error.not_found":         "The requested resource was not found",
	"error.unauthorized":      "Authentication is required",
	"error.forbidden":         "You do not have permission to access this resource",
	"error.bad_request":       "Invalid request",
	"error.internal":          "An internal server error occurred",
	"error.too_many_requests": "Too many requests. Please try again later",
	"error.validation":        "Invalid input",

	// Auth
	"auth.login_success":    "Successfully logged in",
	"auth.login_failed":     "Invalid username or password",
	"auth.token_expired":    "Authentication token has expired. Please login again",
	"auth.token_invalid":    "Invalid authentication token",
	"auth.register_success": "Registration completed",
	"auth.duplicate_id":     "This user ID is already taken",
	"auth.duplicate_email":  "This email is already registered",
	"auth.logout_success":   "Successfully logged out",

	// Entries
	"entry.not_found":          "Entry not found",
	"entry.create_success":     "Entry created successfully",
	"entry.update_success":     "Entry saved successfully",
	"entry.publish_success":    "Entry published successfully",
	"entry.unpublish_success":  "Entry unpublished successfully",
	"entry.archive_success":    "Entry archived successfully",
	"entry.restore_success":    "Entry restored successfully",
	"entry.delete_success":     "Entry deleted successfully",
	"entry.version_conflict":   "Someone else modified this entry first. Please reload and try again",
	"entry.invalid_transition": "This operation is not allowed in the entry's current state",

	// Scheduled actions
	"schedule.created":      "Scheduled action created",
	"schedule.cancelled":    "Scheduled action cancelled",
	"schedule.not_found":    "Scheduled action not found",
	"schedule.invalid_time": "Scheduled time must be in the future",

	// Spaces
	"space.not_found":       "Space not found",
	"space.suspended":       "This space has been suspended",
	"space.subdomain_taken": "This subdomain is already taken",

	// Content types
	"content_type.not_found": "Content type not found",

	// Rate limit
	"rate_limit.exceeded": "Rate limit exceeded. Please retry after %d seconds",
}

var jaMessages = map[string]string{
	// Common errors
	"error.not_found":         "リクエストされたリソースが見つかりません",
	"error.unauthorized":      "認証が必要です",
	"error.forbidden":         "アクセス権限がありません",
	"error.bad_request":       "無効なリクエストです",
	"error.internal":          "サーバー内部エラーが発生しました",
	"error.too_many_requests": "リクエストが多すぎます。しばらくしてから再試行してください",
	"error.validation":        "入力値が正しくありません",

	// Auth
	"auth.login_success":    "ログインしました",
	"auth.login_failed":     "IDまたはパスワードが正しくありません",
	"auth.token_expired":    "認証トークンの有効期限が切れました。再度ログインしてください",
	"auth.token_invalid":    "無効な認証トークンです",
	"auth.register_success": "会員登録が完了しました",
	"auth.duplicate_id":     "このIDは既に使用されています",
	"auth.duplicate_email":  "このメールアドレスは既に登録されています",
	"auth.logout_success":   "ログアウトしました",

	// Entries
	"entry.not_found":          "エントリーが見つかりません",
	"entry.create_success":     "エントリーが作成されました",
	"entry.update_success":     "エントリーが保存されました",
	"entry.publish_success":    "エントリーが公開されました",
	"entry.unpublish_success":  "エントリーの公開が取り消されました",
	"entry.archive_success":    "エントリーがアーカイブされました",
	"entry.restore_success":    "エントリーが復元されました",
	"entry.delete_success":     "エントリーが削除されました",
	"entry.version_conflict":   "他のユーザーが先に変更しました。再読み込みしてからもう一度お試しください",
	"entry.invalid_transition": "現在の状態では実行できない操作です",

	// Scheduled actions
	"schedule.created":      "予約が登録されました",
	"schedule.cancelled":    "予約がキャンセルされました",
	"schedule.not_found":    "予約が見つかりません",
	"schedule.invalid_time": "予約時間は未来でなければなりません",

	// Spaces
	"space.not_found":       "スペースが見つかりません",
	"space.suspended":       "停止されたスペースです",
	"space.subdomain_taken": "このサブドメインは既に使用されています",

	// Content types
	"content_type.not_found": "コンテンツタイプが見つかりません",

	// Rate limit
	"rate_limit.exceeded": "リクエスト制限を超えました。%d秒後に再試行してください",
}
