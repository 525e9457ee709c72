package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/repository"
)

var requiredHeaders = []string{"姓名", "别名", "不可值班的星期", "7小时上限", "17小时上限"}

// SeedRealData 从 csv 文件中导入真实的医生名单
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/doctors.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	headerIndex := make(map[string]int)
	for i, header := range headers {
		headerIndex[header] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := headerIndex[header]; !ok {
			slog.Error("没有找到信息列", "header", header)
			return
		}
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 插入医生到数据库中
	cnt := 0
	for _, record := range records {
		fullName := record["姓名"]
		if fullName == "" {
			slog.Error("没有找到姓名", "record", record)
			continue
		}

		doctor := &domain.Doctor{
			FullName: fullName,
			Alias:    record["别名"],
		}

		// 不可值班的星期形如 "0, 6"，0 表示星期日
		for _, weekday := range strings.Split(record["不可值班的星期"], ", ") {
			if weekday == "" {
				continue
			}

			weekdayInt, err := strconv.Atoi(weekday)
			if err != nil {
				slog.Error("转换星期失败", "weekday", weekday)
				continue
			}

			doctor.UnavailableWeekdays = append(doctor.UnavailableWeekdays, int32(weekdayInt))
		}

		// 上限列留空表示该医生没有对应的上限
		if record["7小时上限"] != "" {
			max7h, err := strconv.Atoi(record["7小时上限"])
			if err != nil {
				slog.Error("转换 7 小时上限失败", "value", record["7小时上限"])
				continue
			}
			max7hInt32 := int32(max7h)
			doctor.Max7hGuards = &max7hInt32
		}
		if record["17小时上限"] != "" {
			max17h, err := strconv.Atoi(record["17小时上限"])
			if err != nil {
				slog.Error("转换 17 小时上限失败", "value", record["17小时上限"])
				continue
			}
			max17hInt32 := int32(max17h)
			doctor.Max17hGuards = &max17hInt32
		}

		if err := r.CreateDoctor(doctor); err != nil {
			slog.Error("插入医生失败", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("插入数据完成", "count", cnt)
}
