package api

import (
	"github.com/go-resty/resty/v2"
)

const userAgent = "mclauncher/1.0"

var client = resty.New().SetHeader("User-Agent", userAgent)
