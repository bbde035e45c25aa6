package model

type CommDirection string

const (
	DirectionInbound  CommDirection = "inbound"
	DirectionOutbound CommDirection = "outbound"
)

type CommType string

const (
	CommEmail  CommType = "email"
	CommSMS    CommType = "sms"
	CommCall   CommType = "call"
	CommSystem CommType = "system"
)

func (t CommType) Valid() bool {
	switch t {
	case CommEmail, CommSMS, CommCall, CommSystem:
		return true
	}
	return false
}

type CommunicationLog struct {
	BaseModel
	OrderID          string        `db:"order_id" json:"order_id"`
	CustomerID       string        `db:"customer_id" json:"customer_id"`
	Direction        CommDirection `db:"direction" json:"direction"`
	Type             CommType      `db:"comm_type" json:"type"`
	Subject          string        `db:"subject" json:"subject"`
	Content          string        `db:"content" json:"content"`
	ResponseReceived bool          `db:"response_received" json:"response_received"`
	CreatedBy        *string       `db:"created_by" json:"created_by"`
}
