// Package utility chứa các hàm tiện ích dùng chung cho tầng service.
package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển struct sang map[string]interface{} thông qua BSON marshal/unmarshal.
// Dùng khi tầng service cần bổ sung field động (timestamps) trước khi ghi vào MongoDB.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}

	itr, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}

	err = bson.Unmarshal(itr, &stringInterfaceMap)
	if err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}

	return stringInterfaceMap, nil
}
