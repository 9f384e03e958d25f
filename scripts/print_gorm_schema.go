package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/cydxin/pixelheart-sdk/config"
	"github.com/cydxin/pixelheart-sdk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Usage:
//
//	PX_MYSQL_DSN=user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=true&loc=Local \
//	  go run ./scripts/print_gorm_schema.go
//
// 没有 PX_MYSQL_DSN 时读 PX_SQLITE_FILE。对每张表打印 GORM 解析出的字段、方言类型，
// 以及数据库里的实际列，用来排查结构体与表结构不一致。
func main() {
	cfg := config.Load()
	cfg.Debug = false
	db, err := cfg.OpenDB()
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	for _, m := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			log.Fatalf("parse %T: %v", m, err)
		}
		printTable(db, stmt.Schema)
	}
}

func printTable(db *gorm.DB, s *schema.Schema) {
	fmt.Printf("=== %s (%s) ===\n", s.Table, s.Name)
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		fmt.Printf("  %-16s %-14s %-20s gorm:%q\n", f.DBName, f.GORMDataType, db.Dialector.DataTypeOf(f), f.Tag.Get("gorm"))
	}

	if !db.Migrator().HasTable(s.Table) {
		fmt.Println("  (table missing in database)")
		return
	}
	cols, err := db.Migrator().ColumnTypes(s.Table)
	if err != nil {
		fmt.Println("  column types failed:", err)
		return
	}
	names := make([]string, 0, len(cols))
	types := make(map[string]string, len(cols))
	for _, c := range cols {
		names = append(names, c.Name())
		types[c.Name()] = c.DatabaseTypeName()
	}
	sort.Strings(names)
	fmt.Println("  --- database ---")
	for _, n := range names {
		mark := ""
		if s.LookUpField(n) == nil {
			mark = "  (not in struct)"
		}
		fmt.Printf("  %-16s %s%s\n", n, types[n], mark)
	}
}
