package mpesa

// Acknowledgement is returned to the provider on the confirm and validate
// actions. It only confirms delivery, never business outcome.
type Acknowledgement struct {
	ResponseCode      int    `json:"ResponseCode"`
	ResponseDesc      string `json:"ResponseDesc"`
	ThirdPartyTransID int    `json:"ThirdPartyTransID"`
}

// Accepted is the fixed acknowledgement body.
func Accepted() Acknowledgement {
	return Acknowledgement{ResponseCode: 0, ResponseDesc: "Success", ThirdPartyTransID: 0}
}
