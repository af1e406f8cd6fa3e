package utils

import (
	"strconv"

	"github.com/pkg/errors"
)

// Transfer 将jwt claims中的身份字段转换为int64
// json解码后数字会变成float64, 因此这里统一按字符串写入与读取
func Transfer(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return ConvertStringToInt64(v)
	default:
		return 0, errors.Errorf("unsupported identity type %T", value)
	}
}

func ConvertStringToInt64(v string) (int64, error) {
	res, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %q failed", v)
	}
	return res, nil
}
