package main

import (
	"vitrine/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.OrderModel{},
		model.OrderFileModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
