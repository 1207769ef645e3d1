package dto

// PayResponseDTO mirrors the parameter set the payment gateway expects in
// the redirect form, checksum included.
type PayResponseDTO struct {
	RequestType    string `json:"requestType"`
	MID            string `json:"MID"`
	Website        string `json:"WEBSITE"`
	OrderID        string `json:"ORDER_ID"`
	CustID         string `json:"CUST_ID"`
	TxnAmount      string `json:"TXN_AMOUNT"`
	CallbackURL    string `json:"CALLBACK_URL"`
	IndustryTypeID string `json:"INDUSTRY_TYPE_ID"`
	ChannelID      string `json:"CHANNEL_ID"`
	ChecksumHash   string `json:"CHECKSUMHASH"`
}

type CallbackRequestDTO struct {
	Status       string `json:"STATUS"`
	TxnID        string `json:"TXNID"`
	OrderID      string `json:"ORDERID"`
	CustID       string `json:"CUST_ID"`
	ChecksumHash string `json:"CHECKSUMHASH"`
}

type CallbackResponseDTO struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Phone   string `json:"phone"`
}
