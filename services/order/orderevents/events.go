package orderevents

const (
	TopicName       = "order"
	orderCreated    = TopicName + ".created"
	orderCheckedOut = TopicName + ".checkedout"
)

type OrderCreated struct {
	OrderUID string
	UserUID  string
	Total    int64
}

func (e OrderCreated) GetEventTypeName() string {
	return orderCreated
}

func (e OrderCreated) GetAggregateUID() string {
	return e.OrderUID
}

type OrderCheckedOut struct {
	OrderUID  string
	ItemCount int
	Quantity  int
}

func (e OrderCheckedOut) GetEventTypeName() string {
	return orderCheckedOut
}

func (e OrderCheckedOut) GetAggregateUID() string {
	return e.OrderUID
}
