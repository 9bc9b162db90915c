package shopapi

type Store struct {
	ID        string  `json:"storeCode"`
	Name      string  `json:"storeNm"`
	Address   string  `json:"address,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Open      bool    `json:"isOpen"`
}

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}
