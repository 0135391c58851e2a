package account

import (
	"context"
	"iwadcs/authority"
	"iwadcs/catalog"
	"iwadcs/misc"
	"iwadcs/persistence"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

type sampleUser struct {
	User
	password string
}

var sampleUsers = []sampleUser{
	{User: User{Username: "admin", Name: "Admin User", Email: "admin@facility.com",
		Role: authority.RoleAdmin, WorkCenter: catalog.WorkCenterAll}, password: "admin123"},
	{User: User{Username: "supervisor", Name: "Supervisor", Email: "supervisor@facility.com",
		Role: authority.RoleSupervisor, WorkCenter: catalog.WorkCenterAll}, password: "super123"},
	{User: User{Username: "electrical_user", Name: "Elec Technician", Email: "elec@facility.com",
		Role: authority.RoleUser, WorkCenter: catalog.WorkCenterElectrical}, password: "electrical123"},
	{User: User{Username: "mechanical_user", Name: "Mech Technician", Email: "mech@facility.com",
		Role: authority.RoleUser, WorkCenter: catalog.WorkCenterMechanical}, password: "mechanical123"},
	{User: User{Username: "instrument_user", Name: "Inst Technician", Email: "inst@facility.com",
		Role: authority.RoleUser, WorkCenter: catalog.WorkCenterInstrument}, password: "instrument123"},
}

// BootstrapSampleUsers writes the demo accounts in one transaction, overwriting existing ones.
func BootstrapSampleUsers(ctx context.Context) error {
	db, err := persistence.ActiveDB(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, sample := range sampleUsers {
			user := sample.User
			hash, err := HashPassword(sample.password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			user.CreateTime = misc.Now()
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
			logrus.WithField("username", user.Username).Info("sample user bootstrapped")
		}
		return nil
	})
}
