package utils

import (
	"strings"

	"VideoTube.com/config"
)

func GetMysqlDsn(c *config.Config) string {
	//生成数据库的dsn
	charset := c.Mysql.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{c.Mysql.Username, ":",
		c.Mysql.Password, "@tcp(", c.Mysql.Addr, ")/",
		c.Mysql.Database, "?charset=" + charset + "&parseTime=True&loc=Local"}, "") //nolint:lll

	return dsn
}
