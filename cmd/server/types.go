package main

import (
	"time"

	"github.com/gnur/booklend"
	"github.com/sirupsen/logrus"
)

type configuration struct {
	Database        string        `default:"file://booklend.db"`
	LogLevel        string        `default:"info"`
	LogFormat       string        `default:"text"`
	BindAddress     string        `default:"localhost:7132"`
	Version         string        `default:"unknown"`
	Mode            string        `default:"release"`
	ConnectAttempts uint          `default:"5"`
	ShutdownTimeout time.Duration `default:"10s"`
}

type booklendApp struct {
	db      booklend.Store
	library *booklend.Library
	logger  *logrus.Entry
	cfg     configuration
}

type messageResponse struct {
	Message string `json:"message"`
}
