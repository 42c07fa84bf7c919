package network

import (
	"github.com/imroc/req"
)

type NetworkController struct {
	BaseUrl string
}

func (nc *NetworkController) Post(path string, headers *map[string]string, body interface{}) (*[]byte, *int, error) {
	header := req.Header{}
	if headers != nil {
		for key, value := range *headers {
			header[key] = value
		}
	}
	response, err := req.Post(nc.BaseUrl+path, header, req.BodyJSON(body))
	if err != nil {
		return nil, nil, err
	}
	payload, err := response.ToBytes()
	if err != nil {
		return nil, nil, err
	}
	statusCode := response.Response().StatusCode
	return &payload, &statusCode, nil
}

func (nc *NetworkController) Get(path string, headers *map[string]string) (*[]byte, *int, error) {
	header := req.Header{}
	if headers != nil {
		for key, value := range *headers {
			header[key] = value
		}
	}
	response, err := req.Get(nc.BaseUrl+path, header)
	if err != nil {
		return nil, nil, err
	}
	payload, err := response.ToBytes()
	if err != nil {
		return nil, nil, err
	}
	statusCode := response.Response().StatusCode
	return &payload, &statusCode, nil
}
