//go:build ignore
// +build ignore

package main

import (
	"context"
	"log"

	pixelheart "github.com/cydxin/pixelheart-sdk"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Example: 给历史评论补作者名
//
// 评论表新增 username 列之前写入的评论，作者名为空。
// 补齐后评论展示的是写入时的用户名，作者之后改名不影响。

func main() {
	// 1. 连接数据库
	dsn := "user:password@tcp(127.0.0.1:3306)/pixelheart?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 2. 创建 Engine（AutoMigrate 会补上 username 列）
	engine, err := pixelheart.NewEngine(pixelheart.WithDB(db))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Close()

	// 3. 回填，可重复执行
	n, err := engine.BackfillCommentAuthorNames(context.Background())
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}
	log.Printf("补齐 %d 条评论的作者名", n)
}
