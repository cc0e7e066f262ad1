package logger

var LogDir string

const RequestIdKey = "X-Console-Request-Id"
