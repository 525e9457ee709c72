package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/config"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/repository"
	"github.com/smhc-dev/guard-manager/backend/internal/seed"
	"github.com/smhc-dev/guard-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int
	var month int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机医生, 3: 标记整月值班日, 4: 插入随机请假记录, 5: 插入随机互斥关系, 6: 插入真实数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.IntVar(&year, "year", time.Now().Year(), "值班日或请假记录所属的年份")
	flag.IntVar(&month, "month", int(time.Now().Month()), "值班日或请假记录所属的月份")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的医生数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				doctor := utils.GenerateRandomDoctor()
				if err := repo.CreateDoctor(doctor); err != nil {
					slog.Error("无法插入医生", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入医生成功", slog.Int("count", n-cnt))
		}
	case 3:
		if month < 1 || month > 12 || year < 1 {
			slog.Error("请输入合法的年份和月份")
			return
		}

		// 把指定月份的每一天都标记为值班日
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		cnt := 0
		for day := first; day.Month() == time.Month(month); day = day.AddDate(0, 0, 1) {
			guardDay := &domain.GuardDay{Date: day}
			if err := repo.CreateGuardDay(guardDay); err != nil {
				slog.Error("无法插入值班日", slog.String("error", err.Error()), slog.String("date", day.Format("2006-01-02")))
				continue
			}

			cnt++
		}

		slog.Info("插入值班日成功", slog.Int("count", cnt))
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的请假记录数量")
			return
		}
		if month < 1 || month > 12 || year < 1 {
			slog.Error("请输入合法的年份和月份")
			return
		}

		doctors, err := repo.GetAllDoctors()
		if err != nil {
			slog.Error("无法获取所有医生", slog.String("error", err.Error()))
			return
		}
		if len(doctors) == 0 {
			slog.Error("数据库中没有医生，请先插入医生")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			doctor := doctors[rand.Intn(len(doctors))]
			leave := utils.GenerateRandomLeave(doctor.ID, month, year)
			if err := repo.CreateLeave(leave); err != nil {
				slog.Error("无法插入请假记录", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入请假记录成功", slog.Int("count", n-cnt))
	case 5:
		if n <= 0 {
			slog.Error("请输入合法的互斥关系数量")
			return
		}

		doctors, err := repo.GetAllDoctors()
		if err != nil {
			slog.Error("无法获取所有医生", slog.String("error", err.Error()))
			return
		}
		if len(doctors) < 2 {
			slog.Error("数据库中医生数量不足，无法生成互斥关系")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			a := doctors[rand.Intn(len(doctors))]
			b := doctors[rand.Intn(len(doctors))]
			if a.ID == b.ID {
				continue
			}

			pair := &domain.Incompatibility{DoctorAID: a.ID, DoctorBID: b.ID}
			if err := repo.CreateIncompatibility(pair); err != nil {
				slog.Error("无法插入互斥关系", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入互斥关系成功", slog.Int("count", n-cnt))
	case 6:
		seed.SeedRealData(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
