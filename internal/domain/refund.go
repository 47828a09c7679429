package domain

// RefundPercentage вычисляет процент возврата при отмене бронирования
//
// Ментор отменяет - всегда полный возврат кандидату.
// Кандидат отменяет - трехступенчатая шкала по времени до начала сессии:
// >= 24 часов: 100%, >= 1 часа: 50%, меньше часа: 0%.
//
// Политика едина для demo и paid сессий: у demo amount = 0,
// поэтому сумма возврата все равно нулевая.
func RefundPercentage(role CancelRole, hoursBeforeSession float64) int {
	if role == RoleMentor {
		return FullRefundPercent
	}

	switch {
	case hoursBeforeSession >= FullRefundHours:
		return FullRefundPercent
	case hoursBeforeSession >= HalfRefundHours:
		return HalfRefundPercent
	default:
		return NoRefundPercent
	}
}

// RefundAmount вычисляет сумму возврата по проценту
func RefundAmount(amount float64, percentage int) float64 {
	return amount * float64(percentage) / 100
}
