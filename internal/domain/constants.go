package domain

const (
	RoleAdmin = "ADMIN"
)

// Values of the lnm_action query parameter the provider sends.
const (
	ActionConfirm  = "confirm"
	ActionValidate = "validate"
)

// Gateway log result labels.
const (
	TransactionStatusSuccess = "Success"
	TransactionStatusFailure = "Failure"
)

const (
	InvoiceStatusUnpaid    = "Unpaid"
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusCancelled = "Cancelled"
	InvoiceStatusRefunded  = "Refunded"
)

// Gateway setting keys.
const (
	GatewaySettingType    = "type"
	GatewaySettingName    = "name"
	GatewaySettingVisible = "visible"
)
