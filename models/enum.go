package models

type Side string
type OrderType string
type EventType string
type ErrorCode string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"

	TypeMarket  OrderType = "market"
	TypeLimit   OrderType = "limit"
	TypeStop    OrderType = "stop"
	TypeFOK     OrderType = "fok"
	TypeIOC     OrderType = "ioc"
	TypeIceberg OrderType = "iceberg"

	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventCancel EventType = "CANCEL"
)

// Response codes returned for every create/modify/cancel request. The core
// never produces BAD_REQUEST; that code is reserved for the transport layer.
const (
	CodeOK          ErrorCode = "OK"
	CodeBadRequest  ErrorCode = "BAD_REQUEST"
	CodeBadQty      ErrorCode = "BAD_QTY"
	CodeBadPrice    ErrorCode = "BAD_PRICE"
	CodeBadSide     ErrorCode = "BAD_SIDE"
	CodeBadType     ErrorCode = "BAD_TYPE"
	CodeBadID       ErrorCode = "BAD_ID"
	CodePartialFill ErrorCode = "PARTIAL_FILL"
	CodeFatal       ErrorCode = "FATAL"
)

func ValidSide(s Side) bool {
	return s == SideBuy || s == SideSell
}

func ValidOrderType(t OrderType) bool {
	switch t {
	case TypeMarket, TypeLimit, TypeStop, TypeFOK, TypeIOC, TypeIceberg:
		return true
	}
	return false
}

// PriceBearing reports whether the order type trades at its own price.
// MARKET, FOK and IOC carry only a placeholder price and cross any level.
func (t OrderType) PriceBearing() bool {
	return t == TypeLimit || t == TypeStop || t == TypeIceberg
}

// RestsWhenUnfilled reports whether an unfilled remainder is queued in the
// book. MARKET, FOK and IOC remainders are always discarded.
func (t OrderType) RestsWhenUnfilled() bool {
	return t.PriceBearing()
}
