// Package common - Test chuyển đổi lỗi MongoDB sang lỗi hệ thống.
package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_Nil(t *testing.T) {
	if err := ConvertMongoError(nil); err != nil {
		t.Errorf("nil phải cho nil, có %v", err)
	}
}

func TestConvertMongoError_NoDocuments(t *testing.T) {
	err := ConvertMongoError(mongo.ErrNoDocuments)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("mongo.ErrNoDocuments phải chuyển thành ErrNotFound, có %v", err)
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi không phải *Error: %v", err)
	}
	if appErr.StatusCode != StatusNotFound {
		t.Errorf("StatusCode = %d, muốn %d", appErr.StatusCode, StatusNotFound)
	}
}

func TestConvertMongoError_GiuNguyenNotFound(t *testing.T) {
	// ErrNotFound do tầng trên nhận diện không được convert lại thành lỗi khác
	err := ConvertMongoError(ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ErrNotFound phải được giữ nguyên, có %v", err)
	}
}

func TestConvertMongoError_LoiKhongNhanDien(t *testing.T) {
	err := ConvertMongoError(fmt.Errorf("lỗi bất kỳ"))

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi không phải *Error: %v", err)
	}
	if appErr.Code.Code != ErrCodeDatabase.Code {
		t.Errorf("mã lỗi = %s, muốn %s", appErr.Code.Code, ErrCodeDatabase.Code)
	}
	if appErr.StatusCode != StatusInternalServerError {
		t.Errorf("StatusCode = %d, muốn 500", appErr.StatusCode)
	}
}

func TestConvertMongoError_CommandError(t *testing.T) {
	err := ConvertMongoError(mongo.CommandError{Code: 150, Message: "interrupted"})
	if !errors.Is(err, ErrMongoConnection) {
		t.Errorf("CommandError code 150 phải thành ErrMongoConnection, có %v", err)
	}
}

func TestError_Is(t *testing.T) {
	err := NewError(ErrCodeFilterSyntax, MsgFilterSyntax, StatusBadRequest, "chi tiết")
	target := NewError(ErrCodeFilterSyntax, MsgFilterSyntax, StatusBadRequest, nil)

	if !errors.Is(err, target) {
		t.Error("hai lỗi cùng mã và message phải khớp qua errors.Is")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("lỗi filter không được khớp với ErrNotFound")
	}
}
