package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateAliasFromChineseName 用姓名的拼音生成别名，
// 别名用于排班表等需要紧凑展示的地方
func GenerateAliasFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	alias := ""

	for _, py := range pinyinArray {
		alias += py[:1]
	}

	digitsLength := rand.Intn(2) + 1
	for i := 0; i < digitsLength; i++ {
		alias += string(digits[rand.Intn(len(digits))])
	}

	return alias
}

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		username += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleScheduler,
	domain.RoleDoctor,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// 用 Fisher-Yates 洗牌算法生成随机的不可值班星期
func GenerateRandomUnavailableWeekdays() []int32 {
	weekdays := []int32{0, 1, 2, 3, 4, 5, 6}

	for i := len(weekdays) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		weekdays[i], weekdays[j] = weekdays[j], weekdays[i]
	}

	// 最多随机选 2 天，选太多的话医生基本排不上班
	n := rand.Intn(3)

	return weekdays[:n]
}

func GenerateRandomDoctor() *domain.Doctor {
	fullName := GenerateRandomChineseName()

	doctor := &domain.Doctor{
		FullName:            fullName,
		Alias:               GenerateAliasFromChineseName(fullName),
		UnavailableWeekdays: GenerateRandomUnavailableWeekdays(),
	}

	// 大约三分之一的医生设置值班次数上限
	if rand.Intn(3) == 0 {
		max7h := int32(rand.Intn(5) + 1)
		doctor.Max7hGuards = &max7h
	}
	if rand.Intn(3) == 0 {
		max17h := int32(rand.Intn(8) + 2)
		doctor.Max17hGuards = &max17h
	}

	return doctor
}

// GenerateRandomLeave 在指定月份内随机生成一段请假
func GenerateRandomLeave(doctorID int64, month int, year int) *domain.Leave {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, rand.Intn(last.Day()))
	end := start.AddDate(0, 0, rand.Intn(5))
	if end.After(last) {
		end = last
	}

	statuses := []domain.LeaveStatus{
		domain.LeaveStatusPending,
		domain.LeaveStatusApproved,
		domain.LeaveStatusRejected,
	}

	return &domain.Leave{
		DoctorID:  doctorID,
		StartDate: start,
		EndDate:   end,
		Reason:    "随机生成的请假",
		Status:    statuses[rand.Intn(len(statuses))],
	}
}
