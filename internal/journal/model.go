package journal

import "github.com/shopspring/decimal"

// Summary is the register's dashboard view: what has been sold today.
type Summary struct {
	TodaySales  decimal.Decimal
	TodayOrders int64
}
