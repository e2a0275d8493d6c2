package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 사용자 친화적인 메시지와 코드로 변환
// 보안상 민감한 정보는 숨기되, 사용자가 문제를 해결할 수 있는 정보 제공
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	// 1. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL 에러 (lib/pq 에러 코드 기준)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: getDuplicateMessage(context),
			}
		case "23503": // foreign_key_violation
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "연결된 데이터가 있어 처리할 수 없습니다",
			}
		case "23502": // not_null_violation
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: "필수 항목이 누락되었습니다",
			}
		case "23514": // check_violation
			return ErrorInfo{
				Code:    ValidationInvalidRange,
				Message: "입력값이 허용 범위를 벗어났습니다",
			}
		}
	}

	// 3. SQLite 등 드라이버가 달라 에러 코드가 없는 경우 문자열로 보조 판별
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: getDuplicateMessage(context),
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}
}

func getNotFoundMessage(context string) string {
	switch context {
	case "product":
		return "상품을 찾을 수 없습니다"
	case "option_group":
		return "옵션 그룹을 찾을 수 없습니다"
	case "option":
		return "옵션을 찾을 수 없습니다"
	case "combination":
		return "옵션 조합을 찾을 수 없습니다"
	case "cart":
		return "장바구니 항목을 찾을 수 없습니다"
	case "order":
		return "주문을 찾을 수 없습니다"
	case "topup":
		return "충전 요청을 찾을 수 없습니다"
	case "user":
		return "사용자를 찾을 수 없습니다"
	default:
		return "요청한 데이터를 찾을 수 없습니다"
	}
}

func getDuplicateMessage(context string) string {
	switch context {
	case "user":
		return "이미 사용 중인 이메일입니다"
	case "product":
		return "이미 사용 중인 슬러그입니다"
	case "combination":
		return "동일한 옵션 조합이 이미 존재합니다"
	default:
		return "이미 존재하는 데이터입니다"
	}
}

// ParseAndRespond 에러를 파싱하여 응답 반환 (헬퍼 함수)
// controller에서 간편하게 사용할 수 있도록
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
