package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 토큰 폐기됨
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // 작업 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"     // 상품 없음
	ProductInactive    = "PRODUCT_INACTIVE"      // 판매 중지 상품
	ProductSlugExists  = "PRODUCT_SLUG_EXISTS"   // 슬러그 중복
	ProductOutOfStock  = "PRODUCT_OUT_OF_STOCK"  // 재고 없음

	// ==================== 옵션 (OPTION_) ====================
	OptionGroupNotFound    = "OPTION_GROUP_NOT_FOUND"    // 옵션 그룹 없음
	OptionNotFound         = "OPTION_NOT_FOUND"          // 옵션 없음
	OptionGroupInUse       = "OPTION_GROUP_IN_USE"       // 배정된 그룹 삭제 불가
	OptionRequiredMissing  = "OPTION_REQUIRED_MISSING"   // 필수 옵션 미선택
	OptionNotAvailable     = "OPTION_NOT_AVAILABLE"      // 선택 불가 옵션

	// ==================== 옵션 조합 (COMBINATION_) ====================
	CombinationNotFound     = "COMBINATION_NOT_FOUND"      // 조합 없음
	CombinationUnavailable  = "COMBINATION_UNAVAILABLE"    // 구매 불가 조합
	CombinationNoGroups     = "COMBINATION_NO_GROUPS"      // 조합 생성 대상 그룹 없음
	CombinationLimitReached = "COMBINATION_LIMIT_REACHED"  // 조합 수 한도 초과

	// ==================== 장바구니 (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // 장바구니 항목 없음
	CartEmpty        = "CART_EMPTY"          // 장바구니 비어 있음

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"        // 주문 없음
	OrderNotCancellable = "ORDER_NOT_CANCELLABLE"  // 취소 불가 상태
	OrderAlreadyPaid    = "ORDER_ALREADY_PAID"     // 이미 결제됨

	// ==================== 지갑 (WALLET_) ====================
	WalletInsufficientBalance = "WALLET_INSUFFICIENT_BALANCE" // 잔액 부족
	WalletTopUpNotFound       = "WALLET_TOPUP_NOT_FOUND"      // 충전 요청 없음
	WalletTopUpAlreadyDone    = "WALLET_TOPUP_ALREADY_DONE"   // 이미 처리된 요청
	WalletInvalidAmount       = "WALLET_INVALID_AMOUNT"       // 허용 범위 밖 금액

	// ==================== 코드 (CODE_) ====================
	CodeOutOfStock = "CODE_OUT_OF_STOCK" // 발송 가능한 코드 없음

	// ==================== 서버 (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // 서버 내부 오류
	DatabaseError       = "DATABASE_ERROR"        // DB 오류
)
