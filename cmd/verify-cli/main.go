package main

import (
	"encoding/json"
	"fmt"
	"os"

	"anya.dev/verify/service"
)

func main() {
	var req service.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResp(os.Stdout, service.Response{
			Success: false,
			Error:   &service.ResponseError{Message: fmt.Sprintf("bad request: %v", err)},
		})
		return
	}

	svc, err := service.New(configFromEnv(), nil)
	if err != nil {
		writeResp(os.Stdout, service.Response{
			Success: false,
			Error:   &service.ResponseError{Message: err.Error()},
		})
		return
	}
	defer svc.Close()

	writeResp(os.Stdout, svc.Dispatch(req))
}
