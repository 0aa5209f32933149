package util

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONF 序列化为字符串，用于日志
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// ObjectIDs 批量转换 hex id, 任意一个非法即返回 false
func ObjectIDs(ids []string) ([]primitive.ObjectID, bool) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, false
		}
		oids = append(oids, oid)
	}
	return oids, true
}

// ToFiniteFloat 数字或数字字符串转 float64, NaN 与 ±Inf 视为非法
func ToFiniteFloat(v any) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("number must be finite")
	}
	return f, nil
}
